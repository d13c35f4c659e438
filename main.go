package main

import "crmdesk/cmd"

func main() {
	cmd.Execute()
}
