// Command sqlbuilder renders statements, checks connections and generates
// column selectors for model packages.
//
// Usage:
//
//	sqlbuilder [--config sqlbuilder.yaml] <command>
//
// Commands:
//
//	render select|delete   print the SQL and parameters for a table
//	ping                   open and ping the configured connections
//	gen                    write <model>_columns.go files
//	config show            print the effective configuration
package main

func main() {
	Execute()
}
