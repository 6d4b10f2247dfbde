package messenger

import "github.com/streadway/amqp"

type exchange struct {
	Name        string
	Type        string
	Durable     bool
	AutoDeleted bool
	Internal    bool
	NoWait      bool
	Arguments   amqp.Table
}

var exchanges = map[string]exchange{
	"listing.created": {
		Name:    "listing.created",
		Type:    "topic",
		Durable: true,
		NoWait:  true,
	},
	"listing.sold": {
		Name:    "listing.sold",
		Type:    "topic",
		Durable: true,
		NoWait:  true,
	},
}
