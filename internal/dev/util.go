package dev

import (
	"encoding/json"
	"log"

	"github.com/ZilDuck/nft-marketplace-engine/internal/config"
)

func Dump(el interface{}) {
	if config.Get().Debug {
		elJson, _ := json.MarshalIndent(el, "", "  ")
		log.Println(string(elJson))
	}
}
