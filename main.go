package main

import "github.com/exynos7904/powerd/cmd"

func main() {
	cmd.Execute()
}
