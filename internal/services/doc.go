// Package services implements the script execution workflow.
//
// ScriptRunner opens one connection, executes every script file of a
// RunConfig in order and reports each outcome through a pgsqlclient.Reporter.
// Server-reported statement errors are recorded and execution continues;
// any other failure ends the run.
package services
