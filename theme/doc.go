// Package theme holds the light/dark preference as an explicit state object.
//
// Consumers either poll State.Get once per frame or subscribe with OnChange;
// the visualization never watches page attributes itself. Store persists
// the preference as "dark" or "light" in a small TOML file.
package theme
