package testdata

import "time"

type Author struct {
	ID        int64     `orm:"primary,autoincrement"`
	Email     string    `orm:"length=120,unique,check='length(email) > 3'"`
	Nickname  *string   `orm:"fieldName=nick,length=40"`
	Score     float64   `orm:"default=0,index"`
	CreatedAt time.Time
	Posts     []*Post `rel:"1:m"`
	password  string  `orm:"length=60"`
	cache     string
	Draft     bool `orm:"-"`
}

func (a *Author) Password() string     { return a.password }
func (a *Author) SetPassword(p string) { a.password = p }

//ormmeta:property name=label,type=string
func (a *Author) Label() string { return a.Email }

func (a *Author) TableName() string { return "writers" }

type Post struct {
	ID     int64   `orm:"primary"`
	Title  string  `orm:"length=200,comment='post title'"`
	Author *Author `rel:"m:1"`
}

// Untagged structs are not entities.
type Page struct {
	Number int
}
