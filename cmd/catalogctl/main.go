// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command catalogctl runs maintenance tasks against the catalog database:
// applying or rolling back migrations and seeding reference data.
package main

import "github.com/taibuivan/recursos/cmd/catalogctl/commands"

func main() {
	commands.Execute()
}
