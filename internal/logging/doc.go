// Package logging configures the installer's console logger.
//
// Output is a single timestamped line per record with a colored level label
// when the destination is a terminal. There is no file or JSON sink; the
// installer is an interactive tool and everything it says goes to the user.
package logging
