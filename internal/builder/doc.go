/*
Package builder turns a format-agnostic configuration tree into folders and
variables of an address-space host and collects the simulated nodes into a
registry for the scheduler.

The walk is depth-first and mirrors the configuration exactly:

 1. Folder Creation: every configuration folder becomes a new host folder
    under its parent. Repeated names are not merged. The folder path passed to
    the host is the slash-joined chain of folder names from the root.

 2. Node Creation: the nodes of a folder are created in declared order before
    any of its child folders are visited. For each node the identifier is
    normalized, the browse name and description defaults are applied and the
    data type and access level names are resolved. A name that cannot be
    resolved is logged once as a *FieldResolutionError and replaced by the
    default.

 3. Registration: a node that declares simulation parameters is registered
    in the registry with an uninitialized generator state.

Failures of the host for a single node are logged and that node is skipped.
A folder that cannot be created aborts the build.
*/
package builder
