package model

import (
	"time"

	"github.com/mickamy/ormmeta/meta"
)

type User struct {
	ID        int64     `orm:"primary,autoincrement"`
	Name      string    `orm:"length=100"`
	Email     string    `orm:"length=255,unique,check='length(email) > 3'"`
	CreatedAt time.Time `orm:"defaultRaw=CURRENT_TIMESTAMP"`
	Posts     []Post    `rel:"has_many"`
	nickname  string    `orm:"nullable"`
}

func (u *User) Nickname() string     { return u.nickname }
func (u *User) SetNickname(n string) { u.nickname = n }

// Greeting is exposed to serializers but never stored.
func (u *User) Greeting() string { return "Hello, " + u.Name }

func (u *User) DefineMetadata(b *meta.Builder) {
	b.Method("Greeting", meta.PropertyOptions{Name: "greeting", SerializedName: "greeting"}).
		Check("", meta.Literal("name <> email"))
}
