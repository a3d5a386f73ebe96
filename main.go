package main

import "github.com/danielrosehill/voicenote/cmd"

func main() {
	cmd.Execute()
}
