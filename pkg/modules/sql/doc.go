// Package sql implements the "sql" map processor.
//
// The expanded map source is executed as a query against a SQLite database
// (modernc.org/sqlite, pure Go). The first result row is applied to the map
// list: each map entry names a result column in Src and a destination
// attribute in Dst.
//
//	maps:
//	  - name: lookup-user
//	    processor: sql
//	    src: "SELECT groupname FROM radusergroup WHERE username = '%{User-Name}'"
//	    maps:
//	      - dst: "control:Group-Name"
//	        src: groupname
//
// Attribute values expanded into the query pass through the module's escape
// function, which doubles single quotes and strips NUL bytes so attacker
// controlled attributes cannot break out of string literals.
package sql
