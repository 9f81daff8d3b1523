package main

import (
	"github.com/km-arc/beans/cmd"

	// Demo components register themselves via init()
	_ "github.com/km-arc/beans/demo/component/all"
)

func main() {
	cmd.Execute()
}
