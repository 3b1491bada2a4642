package main

import (
	"flag"
	"fmt"
	"log"

	"xiangqi/internal/xiangqi"
)

func main() {
	fen := flag.String("fen", "", "position to inspect (default: initial setup)")
	flag.Parse()

	b, turn := xiangqi.NewInitialBoard(), xiangqi.Red
	if *fen != "" {
		var err error
		if b, turn, err = xiangqi.DecodeFEN(*fen); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Print(b.String())
	fmt.Println("FEN:", b.Encode(turn))
	moves := xiangqi.LegalMoves(b, turn)
	fmt.Printf("Legal moves for %s: %d\n", turn, len(moves))
	for _, m := range moves {
		fmt.Printf("  %s  %s\n", xiangqi.Notation(b[m.From], m), m)
	}
}
