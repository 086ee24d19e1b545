// SPDX-License-Identifier: EPL-2.0

// Command voxmix plays and renders sound effects and music through the
// voxmix engine.
package main

func main() {
	Execute()
}
