package main

import (
	"fmt"
	"github.com/fashionmkt/fashion-market-core/internal/config"
	"github.com/fashionmkt/fashion-market-core/internal/config/di"
	"github.com/fashionmkt/fashion-market-core/internal/dev"
	"github.com/fashionmkt/fashion-market-core/internal/event"
	"github.com/fashionmkt/fashion-market-core/internal/ledger"
	"github.com/fashionmkt/fashion-market-core/internal/market"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"os"
)

var container *di.Container

func main() {
	config.Init("cli")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	archive := len(config.Get().ElasticSearch.Hosts) != 0
	if archive {
		event.AddEventListener(event.ListingCreatedEvent, container.GetMarketIndexer().IndexAction)
		event.AddEventListener(event.ListingCancelledEvent, container.GetMarketIndexer().IndexAction)
		event.AddEventListener(event.ListingSoldEvent, container.GetMarketIndexer().IndexAction)
	}

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "keygen",
				Usage:  "Generate a keypair and store it in the keystore",
				Action: keygen,
			},
			{
				Name:   "fund",
				Usage:  "Credit native settlement units to an address",
				Action: fund,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "address", Required: true},
					&cli.Uint64Flag{Name: "amount", Required: true},
				},
			},
			{
				Name:   "create-mint",
				Usage:  "Create a new asset mint",
				Action: createMint,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "authority", Required: true, Usage: "keystore address of the mint authority"},
					&cli.StringFlag{Name: "symbol", Required: true},
					&cli.UintFlag{Name: "decimals", Value: 0},
				},
			},
			{
				Name:   "mint",
				Usage:  "Mint asset units to an owner",
				Action: mintTo,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "authority", Required: true},
					&cli.StringFlag{Name: "mint", Required: true},
					&cli.StringFlag{Name: "to", Required: true},
					&cli.Uint64Flag{Name: "amount", Value: 1},
				},
			},
			{
				Name:   "list",
				Usage:  "List an asset for sale",
				Action: listAsset,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "seller", Required: true},
					&cli.StringFlag{Name: "mint", Required: true},
					&cli.Uint64Flag{Name: "price", Required: true},
				},
			},
			{
				Name:   "cancel",
				Usage:  "Cancel a listing and reclaim the asset",
				Action: cancelListing,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "seller", Required: true},
					&cli.StringFlag{Name: "mint", Required: true},
				},
			},
			{
				Name:   "buy",
				Usage:  "Buy a listed asset",
				Action: buyListing,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "buyer", Required: true},
					&cli.StringFlag{Name: "mint", Required: true},
				},
			},
			{
				Name:   "show",
				Usage:  "Show the listing for a mint",
				Action: showListing,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mint", Required: true},
				},
			},
			{
				Name:   "balance",
				Usage:  "Show the native or token balance of an address",
				Action: showBalance,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "address", Required: true},
					&cli.StringFlag{Name: "mint"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Command failed")
	}

	if archive {
		container.GetElastic().Persist()
	}
}

func keygen(c *cli.Context) error {
	keypair, err := ledger.NewKeypair()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(config.Get().KeystorePath, 0700); err != nil {
		return err
	}

	path := fmt.Sprintf("%s/%s.json", config.Get().KeystorePath, keypair.Address())
	if err := keypair.Save(path); err != nil {
		return err
	}

	fmt.Println(keypair.Address())

	return nil
}

func fund(c *cli.Context) error {
	addr, err := ledger.AddressFromString(c.String("address"))
	if err != nil {
		return err
	}

	return container.GetLedger().Execute(func(op *ledger.Operation) error {
		return op.Credit(addr, c.Uint64("amount"))
	})
}

func createMint(c *cli.Context) error {
	authority, err := keystoreSigner(c.String("authority"))
	if err != nil {
		return err
	}

	mint, err := ledger.NewKeypair()
	if err != nil {
		return err
	}

	err = container.GetLedger().Execute(func(op *ledger.Operation) error {
		return container.GetTokenService().CreateMint(op, mint.Address(), authority.Address(), c.String("symbol"), uint8(c.Uint("decimals")))
	}, authority)
	if err != nil {
		return err
	}

	fmt.Println(mint.Address())

	return nil
}

func mintTo(c *cli.Context) error {
	authority, err := keystoreSigner(c.String("authority"))
	if err != nil {
		return err
	}

	mint, err := ledger.AddressFromString(c.String("mint"))
	if err != nil {
		return err
	}

	to, err := ledger.AddressFromString(c.String("to"))
	if err != nil {
		return err
	}

	return container.GetLedger().Execute(func(op *ledger.Operation) error {
		return container.GetTokenService().MintTo(op, mint, to, c.Uint64("amount"))
	}, authority)
}

func listAsset(c *cli.Context) error {
	seller, err := keystoreSigner(c.String("seller"))
	if err != nil {
		return err
	}

	mint, err := ledger.AddressFromString(c.String("mint"))
	if err != nil {
		return err
	}

	listing, err := container.GetMarketService().List(seller, mint, c.Uint64("price"))
	if err != nil {
		return err
	}

	dev.Dump(listing)

	return nil
}

func cancelListing(c *cli.Context) error {
	seller, err := keystoreSigner(c.String("seller"))
	if err != nil {
		return err
	}

	mint, err := ledger.AddressFromString(c.String("mint"))
	if err != nil {
		return err
	}

	listing, err := market.ListingAddress(mint)
	if err != nil {
		return err
	}

	return container.GetMarketService().Cancel(seller, listing, mint)
}

func buyListing(c *cli.Context) error {
	buyer, err := keystoreSigner(c.String("buyer"))
	if err != nil {
		return err
	}

	mint, err := ledger.AddressFromString(c.String("mint"))
	if err != nil {
		return err
	}

	listing, err := market.ListingAddress(mint)
	if err != nil {
		return err
	}

	_, bump, err := market.VaultAuthority(mint)
	if err != nil {
		return err
	}

	return container.GetMarketService().Buy(buyer, listing, bump)
}

func showListing(c *cli.Context) error {
	mint, err := ledger.AddressFromString(c.String("mint"))
	if err != nil {
		return err
	}

	listing, err := container.GetListingRepo().GetListing(mint)
	if err != nil {
		return err
	}

	fmt.Printf("seller:   %s\n", listing.Seller)
	fmt.Printf("mint:     %s\n", listing.Mint)
	fmt.Printf("price:    %d\n", listing.Price)
	fmt.Printf("isActive: %t\n", listing.IsActive)

	return nil
}

func showBalance(c *cli.Context) error {
	addr, err := ledger.AddressFromString(c.String("address"))
	if err != nil {
		return err
	}

	return container.GetLedger().View(func(op *ledger.Operation) error {
		if c.String("mint") == "" {
			balance, err := op.Balance(addr)
			if err != nil {
				return err
			}
			fmt.Println(balance)

			return nil
		}

		mint, err := ledger.AddressFromString(c.String("mint"))
		if err != nil {
			return err
		}

		holding, err := container.GetTokenService().GetHolding(op, addr, mint)
		if err != nil {
			return err
		}
		fmt.Println(holding.Balance)

		return nil
	})
}

func keystoreSigner(value string) (ledger.Keypair, error) {
	addr, err := ledger.AddressFromString(value)
	if err != nil {
		return ledger.Keypair{}, err
	}

	return ledger.LoadKeypair(fmt.Sprintf("%s/%s.json", config.Get().KeystorePath, addr))
}
