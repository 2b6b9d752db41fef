// Command longend extends market curves into the long end and reports
// forward rates and parallel-shift risk of a bond ladder and a liability
// schedule under every extended curve.
package main

func main() {
	Execute()
}
