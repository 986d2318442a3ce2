package main

import "github.com/salinovbadr/ramadhan-adventure-sub000/cmd/ra/root"

func main() {
	root.Execute()
}
