package rtree

// BulkItem pairs a box with the record ID that should be associated with
// it, for use with BulkLoad.
type BulkItem struct {
	Box      Box
	RecordID int
}

// BulkLoad constructs a new RTree from a batch of items in one shot. It is
// equivalent to inserting every item one at a time into an empty RTree, and
// exists so that callers with the full set of boxes upfront (such as the
// graph builder in package decompose) don't need to build the RTree by
// hand.
func BulkLoad(items []BulkItem) *RTree {
	t := new(RTree)
	for _, item := range items {
		t.Insert(item.Box, item.RecordID)
	}
	return t
}
