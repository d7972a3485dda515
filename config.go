package katas

import "github.com/goliatone/go-katas/internal/runtimeconfig"

var (
	ErrContentDirRequired      = runtimeconfig.ErrContentDirRequired
	ErrDocumentNameRequired    = runtimeconfig.ErrDocumentNameRequired
	ErrLayoutNameRequired      = runtimeconfig.ErrLayoutNameRequired
	ErrLayoutNameCollision     = runtimeconfig.ErrLayoutNameCollision
	ErrOutputDirRequired       = runtimeconfig.ErrOutputDirRequired
	ErrArtifactNameRequired    = runtimeconfig.ErrArtifactNameRequired
	ErrArtifactNamesCollide    = runtimeconfig.ErrArtifactNamesCollide
	ErrSiteRouteRequired       = runtimeconfig.ErrSiteRouteRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	LayoutConfig  = runtimeconfig.LayoutConfig
	RenderConfig  = runtimeconfig.RenderConfig
	OutputConfig  = runtimeconfig.OutputConfig
	SiteConfig    = runtimeconfig.SiteConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
