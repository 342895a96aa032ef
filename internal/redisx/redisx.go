package redisx

import (
	"github.com/redis/go-redis/v9"
)

type Client struct{ R *redis.Client }

func NewClient(host, port string) *Client {
	rdb := redis.NewClient(&redis.Options{Addr: host + ":" + port, DB: 0})
	return &Client{R: rdb}
}
