package display

import (
	"fmt"
	"strings"
)

// RenderFEN draws the board described by a FEN string, White's side down.
// White pieces print blue, black pieces red, coordinates cyan.
func RenderFEN(fen string) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		fmt.Printf("%sinvalid FEN%s\n", Red, Reset)
		return
	}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		fmt.Printf("%sinvalid FEN: %s%s\n", Red, fen, Reset)
		return
	}

	fileHeader := "   a b c d e f g h"
	fmt.Printf("%s%s%s\n", Cyan, fileHeader, Reset)

	for i, rank := range ranks {
		rankNum := 8 - i
		fmt.Printf("%s%d%s ", Cyan, rankNum, Reset)
		for _, r := range rank {
			switch {
			case r >= '1' && r <= '8':
				for n := 0; n < int(r-'0'); n++ {
					fmt.Printf(" .")
				}
			case r >= 'A' && r <= 'Z':
				fmt.Printf(" %s%c%s", Blue, r, Reset)
			case r >= 'a' && r <= 'z':
				fmt.Printf(" %s%c%s", Red, r, Reset)
			}
		}
		fmt.Printf(" %s%d%s\n", Cyan, rankNum, Reset)
	}

	fmt.Printf("%s%s%s\n", Cyan, fileHeader, Reset)
}

// ColorForTurn returns colored turn indicator
func ColorForTurn(turn string) string {
	if turn == "w" {
		return Blue + "White" + Reset
	}
	return Red + "Black" + Reset
}
