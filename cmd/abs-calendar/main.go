// Command abs-calendar serves the ABS future releases calendar as an
// iCalendar feed or JSON, or fetches it once from the command line.
package main

import "github.com/pfrederiksen/abs-calendar/internal/cli"

func main() {
	cli.Execute()
}
