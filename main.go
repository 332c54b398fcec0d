package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"checkers-server/internal/game"
)

// Hotseat terminal build: both sides share one keyboard. Useful for
// poking at the rule engine without a websocket client.
func main() {
	board := game.NewBoard(8)
	turn := game.White
	var rules game.Rules

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("\nTurn: %s\n", turn)
		printBoard(board)

		if out := game.EvaluateTerminal(board, turn); out != nil {
			fmt.Printf("Game over: %s wins by %s\n", out.Winner, out.Reason)
			return
		}

		fmt.Println("Enter move: fromRow fromCol toRow toCol (example: 2 1 3 2)")
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) != 4 {
			fmt.Println("Need four numbers. Try again.")
			continue
		}
		nums := make([]int, 4)
		bad := false
		for i, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				bad = true
				break
			}
			nums[i] = n
		}
		if bad {
			fmt.Println("Not a number. Try again.")
			continue
		}

		from := game.Pos{Row: nums[0], Col: nums[1]}
		to := game.Pos{Row: nums[2], Col: nums[3]}
		out, err := rules.Validate(board, from, to, turn)
		if err != nil {
			fmt.Println("Illegal move:", err)
			continue
		}

		board = out.Board
		if out.Captured != nil {
			fmt.Printf("Captured piece at (%d,%d)\n", out.Captured.Row, out.Captured.Col)
		}
		if out.Promoted {
			fmt.Println("Promoted to king!")
		}
		if out.Terminal != nil {
			printBoard(board)
			fmt.Printf("Game over: %s wins by %s\n", out.Terminal.Winner, out.Terminal.Reason)
			return
		}
		turn = out.NextTurn
	}
}

func printBoard(b game.Board) {
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			p := b.Cells[r][c]
			switch {
			case p.Empty():
				fmt.Print(". ")
			case p.Side == game.White && p.Rank == game.King:
				fmt.Print("W ")
			case p.Side == game.White:
				fmt.Print("w ")
			case p.Rank == game.King:
				fmt.Print("B ")
			default:
				fmt.Print("b ")
			}
		}
		fmt.Println()
	}
}
