package github

const (
	DefaultBaseURL = "https://api.github.com"

	mediaTypeV3       = "application/vnd.github.v3+json"
	mediaTypeReaction = "application/vnd.github.squirrel-girl-preview+json"
	contentTypeJSON   = "application/json"

	defaultUserAgent = "github-asana-bridge"
)

// Reaction contents accepted by GitHub.
const (
	ReactionPlusOne  = "+1"
	ReactionMinusOne = "-1"
	ReactionLaugh    = "laugh"
	ReactionConfused = "confused"
	ReactionHeart    = "heart"
	ReactionHooray   = "hooray"
	ReactionRocket   = "rocket"
	ReactionEyes     = "eyes"
)
