// Package cli holds the console collaborators of a command-line application:
// [Output] for writing text, [Reader] for reading answers from standard
// input and [Parameters] for the parsed command-line arguments.
//
// Argument parsing accepts the usual shapes:
//
//	app --name=value --verbose -abc -o out.txt file1 file2
//
// Long options take their value after "=" or from the next argument when it
// does not start with "-". Grouped short flags are all set to true, except
// the last one, which may also take the next argument as its value. Anything
// else is positional.
package cli
