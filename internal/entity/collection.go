package entity

import (
	"fmt"
	"github.com/gosimple/slug"
)

type Collection struct {
	Id        uint64 `json:"collectionId"`
	Name      string `json:"name"`
	Owner     string `json:"owner"`
	Active    bool   `json:"active"`
	CreatedAt int64  `json:"createdAt"`
}

func (c Collection) Slug() string {
	return CreateCollectionSlug(c.Id)
}

func CreateCollectionSlug(collectionId uint64) string {
	return slug.Make(fmt.Sprintf("collection-%d", collectionId))
}
