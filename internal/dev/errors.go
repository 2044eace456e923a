package dev

import (
	"time"

	"github.com/nu7hatch/gouuid"
)

// Error records an integrity violation for the dev error index. These come
// from defects in the engine itself, never from caller misuse.
type Error struct {
	Time      time.Time              `json:"time"`
	Component string                 `json:"component"`
	Name      string                 `json:"name"`
	Error     string                 `json:"error"`
	Extra     map[string]interface{} `json:"extra"`

	slug string
}

func (e Error) Slug() string {
	return e.slug
}

func NewError(component, name string, err error, extra map[string]interface{}) Error {
	u, _ := uuid.NewV4()

	return Error{
		Time:      time.Now(),
		Component: component,
		Name:      name,
		Error:     err.Error(),
		Extra:     extra,
		slug:      u.String(),
	}
}
