// Package shaders embeds the WGSL sources for the garland render chain.
package shaders

import (
	_ "embed"
)

//go:embed sparkle.wgsl
var SparkleWGSL string

//go:embed snowflake.wgsl
var SnowflakeWGSL string

//go:embed bright.wgsl
var BrightWGSL string

//go:embed blur.wgsl
var BlurWGSL string

//go:embed composite.wgsl
var CompositeWGSL string
