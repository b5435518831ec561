package main

import "github.com/pwmfan/pwmfan-controller/cmd"

func main() {
	cmd.Execute()
}
