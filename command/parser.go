// Package command implements the line-oriented text protocol the arm
// speaks over its serial link. Parsing and execution are separate:
// Parse turns a line into a Command, Interpreter applies it to a
// controller and produces the response line.
package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a command verb.
type Kind int

const (
	KindMove Kind = iota
	KindTest
	KindSpeed
	KindStatus
	KindZero
	KindStop
)

// Command is one parsed protocol line.
type Command struct {
	Kind Kind

	X, Y float64 // KindMove: pen target (mm)
	On   bool    // KindTest: enter or leave test mode

	RPM1, RPM2 int32 // KindSpeed: raw drive speeds
}

// ErrEmpty is returned for blank lines, which carry no command.
var ErrEmpty = fmt.Errorf("empty line")

// Parse parses one protocol line. Verbs are case-insensitive; fields
// are whitespace-separated.
//
//	MOVE <x> <y>
//	TEST ON|OFF
//	SPEED <rpm1> <rpm2>
//	STATUS
//	ZERO
//	STOP
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmpty
	}

	verb := strings.ToUpper(fields[0])
	args := fields[1:]

	switch verb {
	case "MOVE":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("MOVE needs 2 arguments, got %d", len(args))
		}
		x, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return Command{}, fmt.Errorf("MOVE x: %w", err)
		}
		y, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return Command{}, fmt.Errorf("MOVE y: %w", err)
		}
		return Command{Kind: KindMove, X: x, Y: y}, nil

	case "TEST":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("TEST needs ON or OFF")
		}
		switch strings.ToUpper(args[0]) {
		case "ON":
			return Command{Kind: KindTest, On: true}, nil
		case "OFF":
			return Command{Kind: KindTest, On: false}, nil
		}
		return Command{}, fmt.Errorf("TEST needs ON or OFF, got %q", args[0])

	case "SPEED":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("SPEED needs 2 arguments, got %d", len(args))
		}
		r1, err := strconv.ParseInt(args[0], 10, 32)
		if err != nil {
			return Command{}, fmt.Errorf("SPEED rpm1: %w", err)
		}
		r2, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return Command{}, fmt.Errorf("SPEED rpm2: %w", err)
		}
		return Command{Kind: KindSpeed, RPM1: int32(r1), RPM2: int32(r2)}, nil

	case "STATUS":
		if len(args) != 0 {
			return Command{}, fmt.Errorf("STATUS takes no arguments")
		}
		return Command{Kind: KindStatus}, nil

	case "ZERO":
		if len(args) != 0 {
			return Command{}, fmt.Errorf("ZERO takes no arguments")
		}
		return Command{Kind: KindZero}, nil

	case "STOP":
		if len(args) != 0 {
			return Command{}, fmt.Errorf("STOP takes no arguments")
		}
		return Command{Kind: KindStop}, nil
	}

	return Command{}, fmt.Errorf("unknown command %q", verb)
}
