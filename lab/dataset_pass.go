package lab

// runDatasetPass implements spec §4.5 step 1: for each dataset in order,
// prepare it, then drain get_next_data; for each record, feed every algo
// (in registration order) via process_data.
func (l *Lab[C]) runDatasetPass() {
	for _, ds := range l.orderedDatasets() {
		ds.Prepare()
		for {
			record, ok := ds.GetNextData()
			if !ok {
				break
			}
			for _, ra := range l.algos {
				ra.impl.ProcessData(ra.cells, record)
			}
		}
	}
	for _, ra := range l.algos {
		// check_generation_over is a hook every shipped Algo answers true
		// for (spec §9 open question (b)); Lab always completes the single
		// dataset pass and does not loop back for a "not over" result.
		_ = ra.impl.CheckGenerationOver()
	}
}
