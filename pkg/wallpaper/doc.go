// Package wallpaper sets the GNOME desktop wallpaper by writing a file URI into the
// org.gnome.desktop.background settings schema.
//
// Both the light (picture-uri) and dark (picture-uri-dark) keys are written when the schema
// provides them.
package wallpaper
