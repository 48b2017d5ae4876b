// input-test prints the state of the two keys until ctrl+c
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"code.sztanpet.net/zvpsz/rrc/internal/gpio"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func(c chan os.Signal) {
		s := <-c
		fmt.Println("\nGot signal:", s)
		cancel()
	}(c)

	keys, err := gpio.Open(gpio.Key1, gpio.Key2)
	if err != nil {
		log.Fatalf("keys err: %v", err)
	}

	err = gpio.Watch(ctx, keys, func(ix int) {
		fmt.Printf("\rkey1: %v key2: %v  pressed: %v\n", keys[0].Pressed(), keys[1].Pressed(), keys[ix])
	})
	if err != nil {
		log.Fatalf("watch err: %v", err)
	}
}
