package internal

// EnvPrefix is a prefix of ENV variables related
// to the tree tool configuration.
const EnvPrefix = "ltree"

// EnvSeparator is a section separator in ENV variables.
const EnvSeparator = "_"
