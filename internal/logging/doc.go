// Package logger provides leveled logging for envseal commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with colored prefixes.
//
// # Verbosity Levels
//
//   - --verbose: Shows info, warning and error messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only WarnfAlways output is shown; commands report their
// outcome through a final message instead.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Shown with --verbose or --debug
//	Logger.WarnfAlways()     // Always shown (critical warnings)
//	Logger.Errorf()          // Shown with --verbose or --debug
//	Logger.ErrorfAndReturn() // Errorf, then returns the message as an error
//
// Values and passphrases are never logged; log keys and line numbers.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Processing %d files", count)
package logger
