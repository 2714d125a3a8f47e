package entity

type Category struct {
	Base
	Audit
	Name string `db:"name"`
	Slug string `db:"slug"` // derived from Name, never set directly
}
