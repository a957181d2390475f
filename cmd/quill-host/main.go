// quill-host is an interactive serial console for the drawing arm.
// It forwards protocol lines typed on stdin to the firmware and prints
// the response lines as they arrive.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"quill/host/serial"
)

var (
	device = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud   = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		log.Fatalf("open %s: %v", *device, err)
	}
	defer port.Close()

	fmt.Printf("Connected to %s\n", *device)
	fmt.Println("Enter commands (type 'help' for the protocol, 'quit' to exit):")

	go printResponses(port)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			return
		case "help", "?":
			printHelp()
			continue
		}

		if _, err := port.Write([]byte(line + "\n")); err != nil {
			log.Fatalf("write: %v", err)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("read stdin: %v", err)
	}
}

// printResponses copies firmware lines to stdout. Read timeouts show up
// as empty reads and are skipped.
func printResponses(port serial.Port) {
	r := bufio.NewReader(port)
	for {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			fmt.Printf("\r%s> ", line)
		}
		if err == io.EOF {
			continue
		}
		if err != nil {
			log.Printf("serial read: %v", err)
			return
		}
	}
}

func printHelp() {
	fmt.Println("\nFirmware commands:")
	fmt.Println("  MOVE <x> <y>      - Set the Cartesian pen target (mm)")
	fmt.Println("  TEST ON|OFF       - Enter or leave direct speed mode")
	fmt.Println("  SPEED <r1> <r2>   - Raw drive speeds (RPM, test mode only)")
	fmt.Println("  STATUS            - Report mode, target, angles and commands")
	fmt.Println("  ZERO              - Declare the current pose to be zero")
	fmt.Println("  STOP              - Stop both drives and drop the target")
	fmt.Println("\nConsole commands:")
	fmt.Println("  help              - Show this help message")
	fmt.Println("  quit/exit/q       - Exit the console")
	fmt.Println()
}
