// Package catalog holds the built-in subcommand tables of each supported
// package manager.
package catalog

import (
	"github.com/atinylittleshell/pmfzf/internal/pm"
)

type subCmd struct {
	name        string
	description string
}

var tables = map[pm.Kind][]subCmd{
	pm.Yarn: {
		{"add", "Install a package and add it to dependencies"},
		{"bin", "Display the location of the yarn bin folder"},
		{"cache", "Manage the yarn cache"},
		{"config", "Manage the yarn configuration files"},
		{"constraints", "Check that the project constraints are met"},
		{"create", "Create new projects from create-* starter kits"},
		{"dedupe", "Deduplicate dependencies with overlapping ranges"},
		{"dlx", "Run a package in a temporary environment"},
		{"exec", "Execute a shell script"},
		{"explain", "Explain an error code"},
		{"info", "See information related to packages"},
		{"init", "Create a new package.json"},
		{"install", "Install the project dependencies"},
		{"link", "Connect the local project to another one"},
		{"node", "Run node with the hook already setup"},
		{"npm", "Interact with the npm registry"},
		{"pack", "Generate a tarball from the active workspace"},
		{"patch", "Prepare a package for patching"},
		{"plugin", "Manage yarn plugins"},
		{"rebuild", "Rebuild the project's native packages"},
		{"remove", "Remove dependencies from the project"},
		{"run", "Run a script defined in package.json"},
		{"set", "Change a configuration setting"},
		{"unlink", "Disconnect the local project from another one"},
		{"unplug", "Force the unpacking of a list of packages"},
		{"up", "Upgrade dependencies across the project"},
		{"upgrade-interactive", "Open the upgrade interface"},
		{"version", "Apply a new version to the current package"},
		{"why", "Display the reason why a package is needed"},
		{"workspace", "Run a command within the specified workspace"},
		{"workspaces", "Manage the project workspaces"},
	},
	pm.Bun: {
		{"add", "Add a dependency to package.json"},
		{"build", "Bundle TypeScript and JavaScript into a single file"},
		{"create", "Create a new project from a template"},
		{"exec", "Run a shell script directly with Bun"},
		{"init", "Start an empty Bun project from a blank template"},
		{"install", "Install dependencies for a package.json"},
		{"link", "Register or link a local npm package"},
		{"outdated", "Display the latest versions of outdated dependencies"},
		{"patch", "Prepare a package for patching"},
		{"pm", "Additional package management utilities"},
		{"publish", "Publish a package to the npm registry"},
		{"remove", "Remove a dependency from package.json"},
		{"repl", "Start a REPL session with Bun"},
		{"run", "Execute a file or package.json script"},
		{"test", "Run unit tests with Bun"},
		{"unlink", "Unregister a local npm package"},
		{"update", "Update outdated dependencies"},
		{"upgrade", "Upgrade to the latest version of Bun"},
		{"x", "Execute a package binary, installing if needed"},
	},
	pm.Npm: {
		{"access", "Set access level on published packages"},
		{"audit", "Run a security audit"},
		{"cache", "Manipulate the packages cache"},
		{"ci", "Clean install a project"},
		{"config", "Manage the npm configuration files"},
		{"dedupe", "Reduce duplication in the package tree"},
		{"doctor", "Check the health of your npm environment"},
		{"exec", "Run a command from a local or remote npm package"},
		{"explain", "Explain installed packages"},
		{"fund", "Retrieve funding information"},
		{"help", "Get help on npm"},
		{"init", "Create a package.json file"},
		{"install", "Install a package"},
		{"link", "Symlink a package folder"},
		{"login", "Log in to a registry user account"},
		{"ls", "List installed packages"},
		{"outdated", "Check for outdated packages"},
		{"pack", "Create a tarball from a package"},
		{"pkg", "Manage your package.json"},
		{"prune", "Remove extraneous packages"},
		{"publish", "Publish a package"},
		{"rebuild", "Rebuild a package"},
		{"run", "Run arbitrary package scripts"},
		{"search", "Search for packages"},
		{"start", "Start a package"},
		{"test", "Test a package"},
		{"uninstall", "Remove a package"},
		{"update", "Update packages"},
		{"version", "Bump a package version"},
		{"view", "View registry info"},
		{"whoami", "Display npm username"},
	},
	pm.Deno: {
		{"add", "Add dependencies to the configuration file"},
		{"bench", "Run benchmarks"},
		{"check", "Type-check the dependencies"},
		{"clean", "Remove the cache directory"},
		{"compile", "Compile the script into a self contained executable"},
		{"completions", "Generate shell completions"},
		{"coverage", "Print coverage reports"},
		{"doc", "Show documentation for a module"},
		{"eval", "Evaluate a script"},
		{"fmt", "Format source files"},
		{"info", "Show info about cache or info related to source file"},
		{"init", "Initialize a new project"},
		{"install", "Install script as an executable or project dependencies"},
		{"jupyter", "Deno kernel for Jupyter notebooks"},
		{"lint", "Lint source files"},
		{"lsp", "Start the language server"},
		{"outdated", "Find and update outdated dependencies"},
		{"publish", "Publish the current working directory's package or workspace"},
		{"remove", "Remove dependencies from the configuration file"},
		{"repl", "Read Eval Print Loop"},
		{"run", "Run a JavaScript or TypeScript program, or a task"},
		{"serve", "Run a server"},
		{"task", "Run a task defined in the configuration file"},
		{"test", "Run tests"},
		{"types", "Print runtime TypeScript declarations"},
		{"uninstall", "Uninstall a script previously installed"},
		{"upgrade", "Upgrade deno executable to given version"},
	},
}

// Lookup returns the built-in subcommands of kind in table order. The result
// is a fresh slice; callers may modify it.
func Lookup(kind pm.Kind) []pm.Candidate {
	table := tables[kind]
	candidates := make([]pm.Candidate, 0, len(table))
	for _, cmd := range table {
		candidates = append(candidates, pm.Candidate{
			Name:        cmd.name,
			Description: cmd.description,
		})
	}
	return candidates
}
