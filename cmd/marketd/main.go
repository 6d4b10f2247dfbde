package main

import (
	"encoding/json"
	"github.com/fashionmkt/fashion-market-core/internal/config"
	"github.com/fashionmkt/fashion-market-core/internal/config/di"
	"github.com/fashionmkt/fashion-market-core/internal/event"
	"github.com/fashionmkt/fashion-market-core/internal/messenger"
	"go.uber.org/zap"
)

var container *di.Container

func main() {
	config.Init("marketd")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	zap.L().Info("Marketd Started")

	event.AddEventListener(event.ListingCreatedEvent, container.GetMarketIndexer().IndexAction)
	event.AddEventListener(event.ListingCancelledEvent, container.GetMarketIndexer().IndexAction)
	event.AddEventListener(event.ListingSoldEvent, container.GetMarketIndexer().IndexAction)

	if config.Get().Messenger.Enabled {
		event.AddEventListener(event.ListingCreatedEvent, publish(messenger.ListingCreated))
		event.AddEventListener(event.ListingSoldEvent, publish(messenger.ListingSold))
	}

	container.GetDaemon().Execute()
}

func publish(item messenger.Item) func(msg interface{}) {
	return func(msg interface{}) {
		body, err := json.Marshal(msg)
		if err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to encode message")
			return
		}

		if err := container.GetMessenger().SendMessage(item, body, false); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to publish message")
		}
	}
}
