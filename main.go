package main

import (
	"github.com/lehigh-university-libraries/museumwalk/cmd"

	// Register source extractors
	_ "github.com/lehigh-university-libraries/museumwalk/source/agorha"
	_ "github.com/lehigh-university-libraries/museumwalk/source/louvre"
	_ "github.com/lehigh-university-libraries/museumwalk/source/parismusees"
)

func main() {
	cmd.Execute()
}
