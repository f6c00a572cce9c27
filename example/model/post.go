package model

import "github.com/mickamy/ormmeta/meta"

type Post struct {
	ID     int64  `orm:"primary,autoincrement"`
	UserID int64  `orm:"index"`
	Title  string `orm:"length=200"`
	Body   string `orm:"type=text,nullable"`
	Views  int    `orm:"default=0,unsigned"`
	Author *User  `rel:"belongs_to"`
}

func (Post) TableName() string { return "articles" }

func (p *Post) DefineMetadata(b *meta.Builder) {
	b.Check("Views", meta.Deferred(func(alias string) string {
		return "views >= 0 /* " + alias + " */"
	}))
}
