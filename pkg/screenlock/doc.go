// Package screenlock reports whether the screen of the current desktop session is locked.
//
// The default implementation asks the screen saver service of the session bus,
// [org.gnome.ScreenSaver], using its GetActive method. Desktops implementing
// org.freedesktop.ScreenSaver are supported through [FreedesktopScreenSaver].
// When no screen saver service is reachable, [LogindQuerier] reads the LockedHint of the login
// session from [org.freedesktop.login1] on the system bus.
//
// [org.gnome.ScreenSaver]: https://gitlab.gnome.org/GNOME/gnome-shell/-/blob/main/data/dbus-interfaces/org.gnome.ScreenSaver.xml
// [org.freedesktop.login1]: https://www.freedesktop.org/software/systemd/man/latest/org.freedesktop.login1.html
package screenlock
