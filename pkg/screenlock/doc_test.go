package screenlock_test

import (
	"context"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/screenlock"
	"log"
	"time"
)

func ExampleClient_Active() {
	c := screenlock.New(screenlock.Options{})
	defer c.Close()

	locked, err := c.Active(context.Background(), 500*time.Millisecond)
	if err != nil {
		log.Fatalf("Failed to query screen saver: %v", err)
	}

	log.Printf("Screen locked: %v", locked)
}

func ExampleClient_AddActiveSignal() {
	c := screenlock.New(screenlock.Options{})

	activeSignal := make(chan bool, 1)
	err := c.AddActiveSignal(activeSignal)
	if err != nil {
		log.Fatalf("Failed to add active signal: %v", err)
	}

	stop := time.After(10 * time.Second)
	for {
		select {
		case active := <-activeSignal:
			if active {
				log.Println("The screen is now locked")
			} else {
				log.Println("The screen is now unlocked")
			}
		case <-stop:
			err := c.Close()
			if err != nil {
				log.Printf("Failed to close dbus: %v", err)
			}
			return
		}
	}
}
