// Package output post-processes Sakura Cloud API responses before they are
// returned from a tool.
//
// Two transformations are provided:
//
//   - Password masking: database appliances carry the administrator password
//     under Settings and Remark. [MaskDatabasePasswords] replaces both values
//     with [MaskedValue].
//   - Truncation: when the server is configured with a response size limit,
//     [TruncateJSON] drops trailing elements of the largest array in the
//     document and adds a [TruncationWarning] under [WarningKey].
//
// Both work on raw JSON through gjson and sjson so that fields the server does
// not know about pass through untouched.
package output
