/*
Package operation relocates the files named in a list of paths.

	+-------------+
	|  Relocator  |
	| (Core Loop) |
	+------+------+
	       |
	+------+------+
	|   runner    |
	| (workers)   |
	+------+------+
	       |
	+------+------+
	|    Move     |
	| rename/copy |
	+-------------+

🎯 Purpose:
- Turn each non-empty line into a move against a destination root
- Keep the last two path segments (parent directory and file name)
- Classify every path as moved, not found, or failed
- Never stop the batch for a single bad path

🔄 Flow:
1. Trim lines and drop empty ones
2. Check that the destination root is usable (fatal otherwise)
3. For each path: derive the sub-path, check the source, create the parent
   directory, move
4. Collect outcomes in input order and tally the statistics

⚡ Concurrency:
Workers defaults to 1, which keeps progress in input order. With more workers
moves run in parallel; a single collector owns the report so counts are never
shared between goroutines.
*/
package operation
