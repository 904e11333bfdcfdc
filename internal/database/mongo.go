package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const reconnectInterval = 10 * time.Second

// Connect dials MongoDB and keeps retrying on a fixed interval until the
// first ping succeeds. Route handlers assume a live client afterwards.
func Connect(uri string) (*mongo.Client, error) {
	for {
		client, err := tryConnect(uri)
		if err == nil {
			return client, nil
		}
		log.Printf("[DB] [ERROR] mongo connect failed: %v (retrying in %s)", err, reconnectInterval)
		time.Sleep(reconnectInterval)
	}
}

func tryConnect(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}
