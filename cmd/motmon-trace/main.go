// motmon-trace tails the panel's trace output from the pico's USB
// serial port and stamps each line with host time.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"go.bug.st/serial"
)

func main() {
	var port string
	var baud int
	flag.StringVar(&port, "port", "", "Serial port. Empty picks the first one found.")
	flag.IntVar(&baud, "baud", 115200, "Baud rate.")
	flag.Parse()

	if port == "" {
		ports, err := serial.GetPortsList()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if len(ports) == 0 {
			fmt.Fprintln(os.Stderr, "no serial ports found")
			os.Exit(1)
		}
		port = ports[0]
	}

	p, err := serial.Open(port, &serial.Mode{BaudRate: baud})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer p.Close()

	fmt.Println("listening on", port)
	sc := bufio.NewScanner(p)
	for sc.Scan() {
		fmt.Printf("%s %s\n", time.Now().Format("15:04:05.000"), sc.Text())
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
