package main

import "github.com/oakmund/dirtrail/cmd"

func main() {
	cmd.Execute()
}
