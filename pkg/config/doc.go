/*
Package config loads the run defaults for pathshift.

	            +-------------+
	            |   Config    |
	            | (Defaults)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |  JSON   | |    HCL    |
	| Parser    | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Reads .pathshift.yaml, .yml, .json or .hcl
- Validates workers and move_timeout
- Fills in defaults so commands start from a complete value

🔄 Flow:
1. LoadDefault looks for a default file in the working directory
2. The parser registered for the extension decodes it
3. Validate checks values and parses the timeout
4. Commands apply their flags on top

Unknown fields are rejected by the YAML and JSON parsers. HCL files can
reference the environment through the env object.

🔍 Example:

	cfg, err := config.LoadDefault(ctx, ".")
	if err != nil {
		return err
	}
	fmt.Println(cfg.Destination, cfg.Workers, cfg.Timeout())
*/
package config
