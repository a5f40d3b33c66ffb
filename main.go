package main

import "github.com/vox-platform/vox-auth-services/cmd"

func main() {
	cmd.Execute()
}
