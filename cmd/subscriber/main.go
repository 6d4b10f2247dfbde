package main

import (
	"encoding/json"
	"github.com/fashionmkt/fashion-market-core/internal/config"
	"github.com/fashionmkt/fashion-market-core/internal/config/di"
	"github.com/fashionmkt/fashion-market-core/internal/entity"
	"github.com/fashionmkt/fashion-market-core/internal/messenger"
	"go.uber.org/zap"
)

var container *di.Container

func main() {
	config.Init("subscriber")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	go consume(messenger.ListingCreated)
	go consume(messenger.ListingSold)

	select {}
}

func consume(item messenger.Item) {
	zap.L().With(zap.String("item", string(item))).Info("Subscribing")

	if err := container.GetMessenger().ConsumeMessages(item, handleMessage); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to consume messages")
	}
}

func handleMessage(msg string) {
	var action entity.MarketAction
	if err := json.Unmarshal([]byte(msg), &action); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to read message")
		return
	}

	zap.L().With(
		zap.String("mint", action.Mint.String()),
		zap.String("action", string(action.Action)),
		zap.Uint64("price", action.Price),
	).Info("Market action received")
}
