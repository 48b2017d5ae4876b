package main

import (
	"fmt"
	"time"

	"code.sztanpet.net/zvpsz/rrc/internal/display"
	"code.sztanpet.net/zvpsz/rrc/internal/sequence"
)

func main() {
	s, err := display.NewScreen()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	defer s.Close()

	for _, step := range sequence.Demo() {
		if err := s.ShowPattern(step.Pattern); err != nil {
			fmt.Printf("draw error: %v\n", err)
		}
		time.Sleep(2 * time.Second)
	}
}
