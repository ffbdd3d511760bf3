// Command aliasctl maintains the team and league alias file.
//
//	aliasctl check                      validate the alias file
//	aliasctl format --write             sort and group entries in place
//	aliasctl resolve "Man Utd" Spurs    show how names resolve
//	aliasctl import-teams 39 2024       add a league's teams from API-Football
//	aliasctl unmapped sch/*.json        list names missing from the table
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
