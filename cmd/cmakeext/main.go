package main

import "github.com/contriboss/cmake-extension-go/cmd/cmakeext/internal"

func main() {
	internal.Execute()
}
