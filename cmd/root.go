package main

import (
	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{Use: "finadvisor"}

	root.AddCommand(serveCMD(), migrateCMD())
	_ = root.Execute()
}
