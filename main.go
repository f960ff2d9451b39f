package main

import "github.com/quillmd/quill/cmd"

func main() {
	cmd.Execute()
}
