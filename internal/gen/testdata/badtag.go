package testdata

type Broken struct {
	ID   int64  `orm:"primary"`
	Name string `orm:"length=abc"`
}
