package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ZilDuck/nft-marketplace-engine/internal/config"
	"github.com/ZilDuck/nft-marketplace-engine/internal/dic"
	"github.com/ZilDuck/nft-marketplace-engine/internal/repository"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	container     *dic.Container
	nftRepo       repository.NftRepository
	nftActionRepo repository.NftActionRepository
)

func main() {
	config.Init()

	var err error
	container, err = dic.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}
	nftRepo = container.GetNftRepo()
	nftActionRepo = container.GetNftActionRepo()

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "actions",
				Usage:  "Print the action history of an NFT",
				Action: printActions,
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "tokenId", Required: true},
				},
			},
			{
				Name:   "sales",
				Usage:  "Print the completed sales of an NFT",
				Action: printSales,
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "tokenId", Required: true},
				},
			},
			{
				Name:   "nfts",
				Usage:  "Print the NFTs held by an owner",
				Action: printNfts,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "owner", Required: true},
				},
			},
			{
				Name:   "seed",
				Usage:  "Load fixture collections and NFTs into a running marketplace",
				Action: seed,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "fixture", Value: "collections.json"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to execute cli")
	}
}

func printActions(c *cli.Context) error {
	actions, err := nftActionRepo.GetActions(c.Uint64("tokenId"))
	if err != nil {
		return err
	}

	for _, action := range actions {
		fmt.Printf("%d %s from=%s to=%s cost=%s\n", action.Time, action.Action, action.From, action.To, action.Cost)
	}

	return nil
}

func printSales(c *cli.Context) error {
	sales, err := nftActionRepo.GetSales(c.Uint64("tokenId"))
	if err != nil {
		return err
	}

	for _, sale := range sales {
		fmt.Printf("%d buyer=%s cost=%s\n", sale.Time, sale.To, sale.Cost)
	}

	return nil
}

func printNfts(c *cli.Context) error {
	nfts, err := nftRepo.GetNftsByOwner(c.String("owner"))
	if err != nil {
		return err
	}

	for _, nft := range nfts {
		fmt.Printf("%d %s (collection %d)\n", nft.TokenId, nft.Name, nft.Collection)
	}

	return nil
}

type fixtureCollection struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
	Nfts  []struct {
		Name  string `json:"name"`
		Price string `json:"price"`
	} `json:"nfts"`
}

// seed drives the running daemon over its HTTP API so the fixture lands in
// the live in-memory state rather than in a throwaway process.
func seed(c *cli.Context) error {
	path := filepath.Join(config.Get().FixturePath, c.String("fixture"))
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}

	var collections []fixtureCollection
	if err := json.Unmarshal(raw, &collections); err != nil {
		return err
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	baseUrl := fmt.Sprintf("http://localhost:%s", config.Get().ApiPort)

	for _, collection := range collections {
		body, _ := json.Marshal(map[string]string{"name": collection.Name, "owner": collection.Owner})
		resp, err := client.Post(baseUrl+"/collections", "application/json", bytes.NewReader(body))
		if err != nil {
			return err
		}

		var created struct {
			Id uint64 `json:"collectionId"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			_ = resp.Body.Close()
			return err
		}
		_ = resp.Body.Close()

		zap.L().With(zap.Uint64("collectionId", created.Id), zap.String("name", collection.Name)).Info("Cli: Collection seeded")

		for _, nft := range collection.Nfts {
			body, _ := json.Marshal(map[string]string{
				"caller": collection.Owner,
				"name":   nft.Name,
				"price":  nft.Price,
			})
			resp, err := client.Post(fmt.Sprintf("%s/collections/%d/nfts", baseUrl, created.Id), "application/json", bytes.NewReader(body))
			if err != nil {
				return err
			}
			_ = resp.Body.Close()
		}
	}

	return nil
}
