package main

import "github.com/otpvault/libotp-go/cmd/otpvault/cmd"

func main() {
	cmd.Execute()
}
