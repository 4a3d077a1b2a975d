package main

import (
	"log"

	"github.com/Merovar/Warband-Tactics/internal/tactics"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	ebiten.SetWindowTitle("Warband Tactics")
	ebiten.SetWindowSize(1280, 720)
	if err := ebiten.RunGame(tactics.New()); err != nil {
		log.Fatal(err)
	}
}
